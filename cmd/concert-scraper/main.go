package main

import "github.com/copenmusic/concert-scraper/internal/cli"

func main() {
	cli.Execute()
}
