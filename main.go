// The main package for the oihclamirt executable.
package main

import "github.com/luqmaan/oihclamirt/cmd"

func main() {
	cmd.Execute()
}
