// FILE: lixenwraith/conftree/decode.go
package conftree

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// DefaultTagName is the struct tag consulted by Scan.
const DefaultTagName = "yaml"

// ToValue converts the subtree at n into plain Go values: map[string]any for
// dictionaries, []any for arrays (holes become nil) and the scalar payload
// for leaves.
func ToValue(n *Node) any {
	switch n.Type() {
	case TypeDict:
		m := make(map[string]any, n.dict.Len())
		for k, c := range n.dict.All() {
			m[k] = ToValue(c)
		}
		return m
	case TypeArray:
		s := make([]any, n.arr.Size())
		for i, c := range n.arr.All() {
			s[i] = ToValue(c)
		}
		return s
	default:
		return n.Value()
	}
}

// Scan decodes the subtree at path into target, a non-nil pointer. An empty
// path decodes the whole tree. A missing path decodes an empty section.
func (n *Node) Scan(path string, target any) error {
	return n.ScanWithTag(path, DefaultTagName, target)
}

// ScanWithTag is Scan with an explicit struct tag name.
func (n *Node) ScanWithTag(path, tagName string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return newError(KindStructural, "scan target must be non-nil pointer, got %T", target)
	}

	section := n
	if path != "" {
		node, found, err := n.Get(path)
		if err != nil {
			return err
		}
		if !found {
			section = NewRoot()
		} else {
			section = node
		}
	}

	var input any = ToValue(section)
	if !section.Type().IsContainer() && rv.Elem().Kind() == reflect.Struct {
		return newError(KindType, "path %q refers to %s, cannot scan into %T", path, section.Type(), target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          tagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
		ZeroFields:       true,
	})
	if err != nil {
		return wrapError(KindStructural, err, "decoder creation failed")
	}

	if err := decoder.Decode(input); err != nil {
		return wrapError(KindType, err, "decode failed for path %q", path)
	}
	return nil
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToNetIPHookFunc(),
		stringToNetIPNetHookFunc(),
		stringToURLHookFunc(),

		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToNetIPHookFunc handles net.IP conversion
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 45 { // max IPv6 text length
			return nil, fmt.Errorf("invalid IP length: %d", len(str))
		}
		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}
		return ip, nil
	}
}

// stringToNetIPNetHookFunc handles net.IPNet and *net.IPNet conversion
func stringToNetIPNetHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		if isPtr {
			t = t.Elem()
		}
		if t != reflect.TypeOf(net.IPNet{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 49 { // max IPv6 CIDR length
			return nil, fmt.Errorf("invalid CIDR length: %d", len(str))
		}
		_, ipnet, err := net.ParseCIDR(str)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR: %w", err)
		}
		if isPtr {
			return ipnet, nil
		}
		return *ipnet, nil
	}
}

// stringToURLHookFunc handles url.URL and *url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		if isPtr {
			t = t.Elem()
		}
		if t != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 2048 {
			return nil, fmt.Errorf("URL too long: %d bytes", len(str))
		}
		u, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}
