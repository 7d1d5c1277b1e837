package main

import "github.com/oshokin/downonspot-settings/cmd/downonspot-settings/cmd"

func main() {
	cmd.Execute()
}
