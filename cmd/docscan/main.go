package main

import "github.com/dbsmedya/docscan/cmd/docscan/cmd"

func main() {
	cmd.Execute()
}
