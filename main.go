package main

import (
	"certschool.io/infrastructure"
)

func main() {
	infrastructure.StartServer()
}
