// Command vbridge loads a compiled guest wasm module and runs it against
// the bridge's "env" ABI surface.
package main

func main() {
	execute()
}
