// Package ui holds layout constants shared by the view packages.
package ui

const (
	// ScrollMargin is the number of rows kept visible above and below a
	// list cursor.
	ScrollMargin = 2

	// BorderHeight is the vertical space consumed by a panel border.
	BorderHeight = 2

	// BorderWidth is the horizontal space consumed by a panel border.
	BorderWidth = 2

	// MinProgressBarWidth is the narrowest progress bar worth drawing.
	MinProgressBarWidth = 3
)
