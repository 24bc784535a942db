// Package mergemodel implements the merge-model builder (spec §4.5): it
// classifies each Diff3Line, groups consecutive same-kind lines into
// MergeLines, builds the editable MergeEditLine sequence, and implements
// the user edit operations (spec §4.6) and Save (spec §4.8).
package mergemodel

import "github.com/odvcencio/coremerge/pkg/diff3model"

// Details is the MergeDetails enum (spec §3).
type Details int

const (
	DDefault Details = iota
	DNoChange
	DBChanged
	DCChanged
	DBCChanged
	DBCChangedAndEqual
	DBDeleted
	DCDeleted
	DBCDeleted
	DBChangedCDeleted
	DCChangedBDeleted
	DBAdded
	DCAdded
	DBCAdded
	DBCAddedAndEqual
)

// Src names which input a MergeLine resolved to. SrcNone means the range
// is an unresolved conflict.
type Src int

const (
	SrcNone Src = iota
	SrcA
	SrcB
	SrcC
)

func (s Src) String() string {
	switch s {
	case SrcA:
		return "A"
	case SrcB:
		return "B"
	case SrcC:
		return "C"
	default:
		return "none"
	}
}

type rowInfo struct {
	details  Details
	src      Src
	conflict bool
}

// classify derives one Diff3Line's disposition per spec §4.5. autoSolve
// false forces every delta (details != DNoChange) into a conflict with no
// chosen source, implementing the --qall / unsolve() behavior.
func classify(row diff3model.Line, hasC bool, autoSolve bool) rowInfo {
	var info rowInfo
	if !hasC {
		info = classifyTwoWay(row)
	} else {
		info = classifyThreeWay(row)
	}
	if !autoSolve && info.details != DNoChange {
		info.conflict = true
		info.src = SrcNone
	}
	return info
}

func classifyTwoWay(row diff3model.Line) rowInfo {
	hasA := row.LineA != diff3model.Absent
	hasB := row.LineB != diff3model.Absent

	switch {
	case hasA && hasB:
		if row.FineAB == nil {
			return rowInfo{details: DNoChange, src: SrcA}
		}
		return rowInfo{details: DBChanged, conflict: true}
	case hasB:
		// B-only row: an insertion in B, resolved to B.
		return rowInfo{details: DBAdded, src: SrcB}
	default:
		// A-only row (both-absent rows never exist, spec §4.4.4 drops
		// fully empty rows).
		return rowInfo{details: DBDeleted, conflict: true}
	}
}

func classifyThreeWay(row diff3model.Line) rowInfo {
	hasA := row.LineA != diff3model.Absent
	hasB := row.LineB != diff3model.Absent
	hasC := row.LineC != diff3model.Absent

	switch {
	case hasA && hasB && hasC:
		abEq := row.FineAB == nil
		bcEq := row.FineBC == nil
		caEq := row.FineCA == nil
		switch {
		case abEq && bcEq && caEq:
			return rowInfo{details: DNoChange, src: SrcA}
		case abEq && !bcEq && !caEq:
			return rowInfo{details: DCChanged, src: SrcC}
		case bcEq && !abEq && !caEq:
			return rowInfo{details: DBCChangedAndEqual, src: SrcC}
		case caEq && !abEq && !bcEq:
			return rowInfo{details: DBChanged, src: SrcB}
		default:
			return rowInfo{details: DBCChanged, conflict: true}
		}

	case hasA && hasB && !hasC:
		if row.FineAB != nil {
			return rowInfo{details: DBChangedCDeleted, conflict: true}
		}
		return rowInfo{details: DCDeleted, src: SrcC}

	case hasA && !hasB && hasC:
		if row.FineCA != nil {
			return rowInfo{details: DCChangedBDeleted, conflict: true}
		}
		return rowInfo{details: DBDeleted, src: SrcB}

	case !hasA && hasB && hasC:
		if row.FineBC != nil {
			return rowInfo{details: DBCAdded, conflict: true}
		}
		return rowInfo{details: DBCAddedAndEqual, src: SrcC}

	case !hasA && !hasB && hasC:
		return rowInfo{details: DCAdded, src: SrcC}

	case !hasA && hasB && !hasC:
		return rowInfo{details: DBAdded, src: SrcB}

	default: // hasA only
		return rowInfo{details: DBCDeleted, src: SrcC}
	}
}
