package main

import "github.com/oshokin/siren-node/cmd/siren-send/cmd"

func main() {
	cmd.Execute()
}
