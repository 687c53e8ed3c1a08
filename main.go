package main

import "github.com/apontae/timesheet-management/cmd"

func main() {
	cmd.Execute()
}
