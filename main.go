package main

import "github.com/yi-nology/merchant_console/cmd"

func main() {
	cmd.Execute()
}
