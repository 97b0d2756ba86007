// Command mensura summarizes measurement series, fits lines and curves, and
// packs series into compact .msr dataset files.
package main

func main() {
	Execute()
}
