package size

// CellCountInt counts cells along one axis of the grid (0-indexed positions,
// widths and heights).
type CellCountInt = int
