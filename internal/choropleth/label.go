package choropleth

import "strconv"

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// FigureLabel numbers a map by its zero-based position in the whole gallery:
// 0 is "Figure 1A.", 25 is "Figure 1Z.", 26 is "Figure 2A.".
func FigureLabel(index int) string {
	if index < 0 {
		index = 0
	}
	group := index/len(letters) + 1
	return "Figure " + strconv.Itoa(group) + string(letters[index%len(letters)]) + "."
}
