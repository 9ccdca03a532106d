package cluster

import (
	"github.com/grailbio/base/log"
)

// TransformMode states whether FastPG should log-transform expression values
// before clustering. The string values are the exact tokens the script
// expects on its command line.
type TransformMode string

const (
	// TransformOn forces the log transform.
	TransformOn TransformMode = "true"
	// TransformOff disables the log transform.
	TransformOff TransformMode = "false"
	// TransformAuto defers the decision to the script, which transforms
	// only when the maximum observed value exceeds 1000.
	TransformAuto TransformMode = "auto"
)

// ResolveTransform picks the transform mode from its three sources, first
// match wins: the -force-transform flag, the -no-transform flag, then a
// config file's transform key. With no source set the mode is auto.
//
// Setting both flags cancels them out and resolution falls through to the
// config file or auto. The original wrapper behaved this way rather than
// rejecting the combination, and callers depend on it, so it is kept; the
// warning is the only concession.
func ResolveTransform(force, noTransform bool, configPath string) (TransformMode, error) {
	switch {
	case force && !noTransform:
		return TransformOn, nil
	case !force && noTransform:
		return TransformOff, nil
	case force && noTransform:
		log.Error.Printf("both -force-transform and -no-transform set; ignoring both")
	}
	if configPath != "" {
		mode, err := readTransformConfig(configPath)
		if err != nil {
			return "", err
		}
		return TransformMode(mode), nil
	}
	return TransformAuto, nil
}
