package main

import "github.com/nikogura/talent-match/cmd"

func main() {
	cmd.Execute()
}
