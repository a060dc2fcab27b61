package sarc

import "errors"

// ErrBadHashMultiplier is returned when an SFAT header declares a filename
// hash multiplier other than bctk.SFATMultiplier.
var ErrBadHashMultiplier = errors.New("sarc: unexpected hash multiplier")
