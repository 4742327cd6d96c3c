package main

import "github.com/oshokin/siren-node/cmd/siren-node/cmd"

func main() {
	cmd.Execute()
}
