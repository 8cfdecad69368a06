// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

const (
	PI   = 3.1415926535897932  // Pi
	C    = 2.99792458e8        // Speed of light [m/s]
	Re   = 6378137.0           // Earth's radius [m]
	Fe   = 1.0 / 298.257223563 // Earth's flattening
	OMGe = 7.2921151467e-5     // Earth rotation angular velocity [rad/s] (WGS84/ICD-GPS-200)
)

// Unit scaling between the tabular source representation and SI
const (
	kmToM       = 1e3   // position: km -> m
	usToS       = 1e-6  // clock bias: microsec -> sec
	dmpsToMps   = 1e-1  // velocity: decimeters/sec -> m/sec
	driftToSps  = 1e-10 // clock drift: 1e-4 microsec/sec -> sec/sec
	derivToDmps = 1e4   // derivative of km (or microsec) per sec -> dm/sec (or 1e-4 microsec/sec)
)

const (
	SecondsPerWeek = 604800.0
	timeTolerance  = 1e-9 // Two epochs closer than this [s] name the same table slot
)
