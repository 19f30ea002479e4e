package main

import (
	"github.com/myousefi2016/lgca/cmd"
)

func main() {
	cmd.Execute()
}
