//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package vm

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"smoltui/pkg/define"
	"smoltui/pkg/io"
)

const (
	keyImg         = "img"
	keyKernel      = "kernel"
	keyMem         = "mem"
	keyCores       = "cores"
	keyHostFwd     = "hostfwd"
	keyEditProtect = "editprotect"
	keyRmProtect   = "rmprotect"
	keyQMPPort     = "qmp_port"
	keyBridgeNet   = "bridgenet"
	keyShare       = "share"
	keyShareRW     = "sharerw"
	keyExtra       = "extra"
)

// NameFromConfPath returns the VM name for <dir>/<name>.conf.
func NameFromConfPath(confPath string) (string, error) {
	name, ok := strings.CutSuffix(filepath.Base(confPath), define.ConfSuffix)
	if !ok {
		return "", fmt.Errorf("%q: %w", confPath, define.ErrNotAConfigFile)
	}
	if !define.NameRegex.MatchString(name) {
		return "", fmt.Errorf("%q: %w", confPath, define.ErrRegex)
	}
	return name, nil
}

// Load builds a VM from its configuration file and seeds its state from the
// marker file in baseDir. Malformed values put the VM in InvalidConfiguration,
// only an unreadable file is an error.
func Load(confPath, baseDir string) (*VM, error) {
	name, err := NameFromConfPath(confPath)
	if err != nil {
		return nil, err
	}
	data, err := io.NewFile(confPath).Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read VM configuration %s: %w", confPath, err)
	}

	v := Parse(name, data)
	v.ConfPath = confPath
	v.Refresh(baseDir)
	return v, nil
}

// Parse reads key=value lines. The first value that fails to convert sets
// InvalidConfiguration and stops parsing, keys after it stay unset.
func Parse(name string, data []byte) *VM {
	v := &VM{
		Name:  name,
		State: StoppedState(),
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if err := v.set(key, value); err != nil {
			v.State = Invalid(err.Error())
			return v
		}
	}
	if err := scanner.Err(); err != nil {
		v.State = Invalid(fmt.Sprintf("failed to read configuration: %v", err))
	}
	return v
}

func (v *VM) set(key, value string) error {
	var err error
	switch key {
	case keyImg:
		v.Img = &value
	case keyKernel:
		v.Kernel = &value
	case keyMem:
		v.Mem = &value
	case keyCores:
		c, perr := strconv.ParseUint(value, 10, 8)
		if perr != nil {
			return fmt.Errorf("failed to convert 'cores' parameter (%s) to a u8: %w", value, perr)
		}
		cores := uint8(c)
		v.Cores = &cores
	case keyHostFwd:
		v.HostFwd = &value
	case keyEditProtect:
		v.EditProtect, err = parseBoolKey(key, value)
	case keyRmProtect:
		v.RmProtect, err = parseBoolKey(key, value)
	case keyQMPPort:
		var port uint16
		if p, perr := strconv.ParseUint(value, 10, 16); perr == nil {
			port = uint16(p)
		}
		v.QMPPort = &port
	case keyBridgeNet:
		v.BridgeNet = &value
	case keyShare:
		v.Share = &value
	case keyShareRW:
		v.ShareRW, err = parseBoolKey(key, value)
	case keyExtra:
		v.Extra = &value
	}
	return err
}

func parseBoolKey(key, value string) (bool, error) {
	b, err := ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("failed to parse '%s' parameter (%s) to a boolean: %w", key, value, err)
	}
	return b, nil
}

// ParseBool accepts true/false/yes/no/y/n in any case, optionally double quoted.
func ParseBool(input string) (bool, error) {
	switch strings.ToLower(strings.Trim(input, `"`)) {
	case "true", "yes", "y":
		return true, nil
	case "false", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("cannot convert '%s' into a boolean", input)
	}
}
