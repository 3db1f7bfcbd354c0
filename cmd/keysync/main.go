// Command keysync synchronizes translation keys found in source code into a
// JSON locale file.
package main

import "keysync/cmd/keysync/cmd"

func main() {
	cmd.Execute()
}
