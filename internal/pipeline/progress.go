package pipeline

// Interpolate maps per-file completion onto a stage's progress band.
// With processed files out of total done, the result moves linearly from
// base toward base+band, never past it. A document with no files sits at
// the stage base.
func Interpolate(base, band, processed, total int) int {
	if total <= 0 {
		return base
	}
	if processed < 0 {
		processed = 0
	}
	if processed > total {
		processed = total
	}
	return base + (band*processed+total/2)/total
}
