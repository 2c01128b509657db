// tasklist is a terminal to-do list with a CLI and an interactive UI.
package main

import "github.com/antopolskiy/tasklist/cmd"

func main() {
	cmd.Execute()
}
