package main

import "techfest-backend/cmd/server"

func main() {
	server.Init()
	server.Run()
}
