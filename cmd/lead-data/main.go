// lead-data is the operational CLI for the contact database: batch imports
// from spreadsheet files and full exports, sharing the server's pipeline.
package main

func main() {
	Execute()
}
