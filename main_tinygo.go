//go:build tinygo

package main

import (
	"compass/app"
	"compass/hal"
)

func main() {
	app.Run(hal.New(hal.DisplayConfig{Round: true}), app.Config{Round: true})
}
