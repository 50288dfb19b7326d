// main.go
//
// Entry point. Everything interesting happens in cmd/ (the cobra command
// tree) and sim/ (the cache model and replay engine).

package main

import "github.com/cachesim/cachesim/cmd"

func main() {
	cmd.Execute()
}
