// Command stallkit splits a market stall spreadsheet into per-category listings.
package main

import "github.com/klytics/stallkit/cmd"

func main() {
	cmd.Execute()
}
