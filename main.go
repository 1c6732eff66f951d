package main

import "license-sync/cmd"

//go:generate swag init -g cmd/start.go -o docs/swagger --outputTypes go

func main() {
	cmd.Execute()
}
