package holder

import "errors"

// ErrNotTargeted is returned by SetProjectionTarget when the holder's
// item type is not marked Targeted (spec §9's projection open question).
var ErrNotTargeted = errors.New("holder: item is not targeted, cannot set a projection target")
