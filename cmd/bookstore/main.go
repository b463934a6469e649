package main

import (
	"os"

	"horse.fit/bookstore/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
