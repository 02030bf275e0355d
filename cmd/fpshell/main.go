package main

import (
	"github.com/robotalks/fpctl/pkg/cli/sh"
	"github.com/robotalks/fpctl/pkg/env"
)

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
