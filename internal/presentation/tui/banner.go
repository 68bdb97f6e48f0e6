package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for the interactive CLI.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String("                               _    _ _   ").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("  ___  ___ ___ _ __   ___     | | _(_) |_ ").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" / __|/ __/ _ \\ '_ \\ / _ \\____| |/ / | __|").Foreground(p.Color("#c084fc"))
	s4 := termenv.String(" \\__ \\ (_|  __/ | | |  __/____|   <| | |_ ").Foreground(p.Color("#e879f9"))
	s5 := termenv.String(" |___/\\___\\___|_| |_|\\___|    |_|\\_\\_|\\__|").Foreground(p.Color("#f472b6"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
