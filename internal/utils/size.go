package utils

import (
	"fmt"
	"strings"
)

// sizeUnitStep is the number of bytes per size unit.
const sizeUnitStep = 1024

// sizeUnitLabels lists the lower-case unit suffixes from bytes upward.
var sizeUnitLabels = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize renders a byte length as a compact lower-case size string:
// whole bytes below one kilobyte, one decimal place below ten units with a
// trailing ".0" dropped, and whole units above that.
func FormatFileSize(sizeInBytes int64) string {
	if sizeInBytes < 0 {
		return "0b"
	}
	scaledValue := float64(sizeInBytes)
	unitIndex := 0
	for scaledValue >= sizeUnitStep && unitIndex < len(sizeUnitLabels)-1 {
		scaledValue /= sizeUnitStep
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%d%s", sizeInBytes, sizeUnitLabels[0])
	}
	if scaledValue < 10 {
		formattedValue := strings.TrimSuffix(fmt.Sprintf("%.1f", scaledValue), ".0")
		return formattedValue + sizeUnitLabels[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", scaledValue, sizeUnitLabels[unitIndex])
}
