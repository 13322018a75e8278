// Command bellronos is the Bellronos language CLI: run a source file or
// install a package from the configured registry.
package main

import "github.com/Architecture-Mechanism/bellronos/cmd/bellronos/cmd"

func main() {
	cmd.Execute()
}
