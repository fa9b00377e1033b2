package cbmarc

import "github.com/dfandrich/cbmarc/types"

// walkerRegistry plays the role of a DirFunctions[] array of C function
// pointers, indexed here by ContainerKind instead of array position.
// Several kinds share a
// walker: the five ARC variants differ only in prelude size (tracked
// by arcPrelude), the disk-image family differs only in geometry, and
// the six P00-family kinds differ only in the type name they report.
var walkerRegistry = map[types.ContainerKind]walkerFunc{
	types.ArcRaw:     dirARC,
	types.ArcC64V10:  dirARC,
	types.ArcC64V13:  dirARC,
	types.ArcC64V15:  dirARC,
	types.ArcC128V15: dirARC,
	types.LHASFX:     dirLHA,
	types.LHARaw:     dirLHA,
	types.LynxOld:    dirLynx,
	types.LynxNew:    dirLynx,
	types.T64:        dirT64,
	types.D64:        dirDiskImage,
	types.C1581:      dirDiskImage,
	types.X64:        dirDiskImage,
	types.P00:        dirP00,
	types.S00:        dirP00,
	types.U00:        dirP00,
	types.R00:        dirP00,
	types.D00:        dirP00,
	types.X00:        dirP00,
	types.N64:        dirN64,
	types.LBR:        dirLBR,
	types.TAP:        dirTAP,
}
