package commands

// ProbeAll exports probeAll for testing.
var ProbeAll = probeAll //nolint:gochecknoglobals // test export

// TransientFailure exports transientFailure for testing.
var TransientFailure = transientFailure //nolint:gochecknoglobals // test export
