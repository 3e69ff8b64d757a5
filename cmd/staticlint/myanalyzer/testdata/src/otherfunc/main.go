package main

import (
	"log"
	"os"
)

type os2 struct{}

func (os2) Exit(int) {}

func run() {
	os.Exit(3)
}

func main() {
	var os os2
	os.Exit(1)
	run()
	log.Fatal("done")
}
