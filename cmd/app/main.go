package main

import (
	"github.com/humanbelnik/kinopick/internal/app"
	"github.com/humanbelnik/kinopick/internal/config"
)

func main() {
	app.Go(config.Load())
}
