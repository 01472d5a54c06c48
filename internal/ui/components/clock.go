package components

import "fmt"

// Clock formats whole seconds as mm:ss. Minutes keep counting past 59 and
// negative values read as zero.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
