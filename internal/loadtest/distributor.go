package loadtest

import "fmt"

// Distribute splits totalOperations across workerCount workers. Every
// worker receives floor(total/workers); the first total%workers workers
// receive one extra, so the shares always sum to totalOperations and no
// two shares differ by more than one.
func Distribute(totalOperations, workerCount int) ([]int, error) {
	if totalOperations <= 0 {
		return nil, fmt.Errorf("%w: total operations must be positive, got %d", ErrInvalidConfiguration, totalOperations)
	}
	if workerCount <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", ErrInvalidConfiguration, workerCount)
	}

	base := totalOperations / workerCount
	extra := totalOperations % workerCount

	shares := make([]int, workerCount)
	for i := range shares {
		shares[i] = base
		if i < extra {
			shares[i]++
		}
	}
	return shares, nil
}
