package models

import "strings"

// RecognizedWord is a single OCR-detected token with its pixel-space
// bounding box. Coordinates use the image convention: Y grows downward.
type RecognizedWord struct {
	Text string

	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

// YCenter returns the vertical midpoint of the word's bounding box.
func (w RecognizedWord) YCenter() float64 {
	return (w.YMin + w.YMax) / 2
}

// Height returns the bounding box height.
func (w RecognizedWord) Height() float64 {
	return w.YMax - w.YMin
}

// Width returns the bounding box width.
func (w RecognizedWord) Width() float64 {
	return w.XMax - w.XMin
}

// Line is an ordered run of recognized words judged to lie on one visual
// text line, left to right.
type Line struct {
	Words []RecognizedWord
}

// Text joins the member words with single spaces in left-to-right order.
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}

// YCenter returns the mean vertical midpoint of the member words.
func (l Line) YCenter() float64 {
	if len(l.Words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range l.Words {
		sum += w.YCenter()
	}
	return sum / float64(len(l.Words))
}
