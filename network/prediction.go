package network

import (
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/shared/messages"
)

const predictionBufferSize = 64

// InputRecord stores an input alongside the predicted position after applying it.
type InputRecord struct {
	Input     messages.PlayerInput
	Predicted gamemath.Vec3
}

// PredictionBuffer is a ring buffer of recent inputs and their predicted
// outcomes. It is a diagnostic log: corrections blend toward the server and
// never replay it.
type PredictionBuffer struct {
	history [predictionBufferSize]InputRecord
	nextSeq uint32
}

// Store saves an input and the resulting predicted position.
func (pb *PredictionBuffer) Store(input messages.PlayerInput, predicted gamemath.Vec3) {
	idx := input.Sequence % predictionBufferSize
	pb.history[idx] = InputRecord{
		Input:     input,
		Predicted: predicted,
	}
	pb.nextSeq = input.Sequence + 1
}

// Get retrieves a stored record by sequence number. Returns false if not found
// or if the slot has been overwritten.
func (pb *PredictionBuffer) Get(seq uint32) (InputRecord, bool) {
	idx := seq % predictionBufferSize
	record := pb.history[idx]
	if record.Input.Sequence != seq || seq >= pb.nextSeq {
		return InputRecord{}, false
	}
	return record, true
}

// NextSeq returns the next expected sequence number.
func (pb *PredictionBuffer) NextSeq() uint32 {
	return pb.nextSeq
}

// Pending returns how many stored inputs the server has not acknowledged yet.
func (pb *PredictionBuffer) Pending(lastAcked uint32) int {
	n := 0
	for seq := lastAcked + 1; seq < pb.nextSeq; seq++ {
		if _, ok := pb.Get(seq); ok {
			n++
		}
	}
	return n
}

// PredictionError calculates the distance between predicted and actual server
// position for a given sequence.
func (pb *PredictionBuffer) PredictionError(seq uint32, server gamemath.Vec3) (float64, bool) {
	record, ok := pb.Get(seq)
	if !ok {
		return 0, false
	}
	return record.Predicted.Sub(server).Len(), true
}
