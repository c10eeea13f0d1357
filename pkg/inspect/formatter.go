package inspect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/hap-protocol/hap-go/pkg/model"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowMetadata includes format and access information
	ShowMetadata bool

	// ShowIDs includes short types alongside names
	ShowIDs bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowMetadata: true,
		ShowIDs:      false,
		IndentWidth:  2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// FormatValue formats a value for display, including its unit.
func (f *Formatter) FormatValue(value any, unit string) string {
	if value == nil {
		return "null"
	}

	var s string
	switch v := value.(type) {
	case bool:
		s = strconv.FormatBool(v)
	case string:
		return strconv.Quote(v)
	case int:
		s = strconv.FormatInt(int64(v), 10)
	case int8:
		s = strconv.FormatInt(int64(v), 10)
	case int16:
		s = strconv.FormatInt(int64(v), 10)
	case int32:
		s = strconv.FormatInt(int64(v), 10)
	case int64:
		s = strconv.FormatInt(v, 10)
	case uint:
		s = strconv.FormatUint(uint64(v), 10)
	case uint8:
		s = strconv.FormatUint(uint64(v), 10)
	case uint16:
		s = strconv.FormatUint(uint64(v), 10)
	case uint32:
		s = strconv.FormatUint(uint64(v), 10)
	case uint64:
		s = strconv.FormatUint(v, 10)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprintf("%v", v)
	}

	if u := FormatUnit(unit); u != "" {
		if u == "%" {
			return s + u
		}
		return s + " " + u
	}
	return s
}

// FormatState formats an enumerated value as "NAME (code)" using the
// characteristic's valid names. Non-enum values fall back to FormatValue.
func (f *Formatter) FormatState(info *model.CharacteristicInfo, value any) string {
	if info == nil {
		return f.FormatValue(value, "")
	}
	if len(info.ValidNames) == 0 {
		return f.FormatValue(value, info.Unit)
	}

	code, ok := enumCode(value)
	if !ok {
		return f.FormatValue(value, info.Unit)
	}
	for i, v := range info.ValidValues {
		if v == code && i < len(info.ValidNames) {
			return fmt.Sprintf("%s (%d)", info.ValidNames[i], code)
		}
	}
	return fmt.Sprintf("UNKNOWN(%d)", code)
}

func enumCode(value any) (int, bool) {
	rv := reflect.ValueOf(value)
	switch {
	case rv.CanInt():
		return int(rv.Int()), true
	case rv.CanUint():
		return int(rv.Uint()), true
	}
	return 0, false
}

// FormatUnit returns the display form of a unit name.
func FormatUnit(unit string) string {
	switch unit {
	case "":
		return ""
	case "percentage":
		return "%"
	case "celsius":
		return "°C"
	case "arcdegrees":
		return "°"
	default:
		return unit
	}
}

// FormatAccess formats HAP permission strings as compact flags ("RWN").
func FormatAccess(perms []string) string {
	var a model.Access
	for _, p := range perms {
		switch p {
		case "pr":
			a |= model.AccessRead
		case "pw":
			a |= model.AccessWrite
		case "ev":
			a |= model.AccessNotify
		}
	}
	return a.String()
}

// FormatFormat describes a characteristic's value format
// (e.g. "float 0..100 step 1", "enum 0..5").
func FormatFormat(info *model.CharacteristicInfo) string {
	var sb strings.Builder
	sb.WriteString(info.Format)

	switch {
	case info.MaxCode != nil:
		fmt.Fprintf(&sb, " 0..%d", *info.MaxCode)
	case info.MinValue != nil && info.MaxValue != nil:
		fmt.Fprintf(&sb, " %s..%s",
			strconv.FormatFloat(*info.MinValue, 'f', -1, 64),
			strconv.FormatFloat(*info.MaxValue, 'f', -1, 64))
	case info.MaxLen > 0:
		fmt.Fprintf(&sb, " max %d", info.MaxLen)
	}
	if info.MinStep != nil {
		fmt.Fprintf(&sb, " step %s", strconv.FormatFloat(*info.MinStep, 'f', -1, 64))
	}
	return sb.String()
}

// FormatCharacteristic formats one characteristic node as a single line.
func (f *Formatter) FormatCharacteristic(node *CharacteristicNode) string {
	name := node.Info.Name
	if f.ShowIDs {
		name = fmt.Sprintf("[%s] %s", node.Info.Type, name)
	}

	var value string
	switch {
	case node.Err != nil:
		value = fmt.Sprintf("<error: %v>", node.Err)
	case !node.Read:
		value = "<not read>"
	default:
		value = f.FormatState(node.Info, node.Value)
	}

	line := fmt.Sprintf("%s = %s", name, value)
	if f.ShowMetadata {
		line += fmt.Sprintf(" (%s, %s)", FormatFormat(node.Info), FormatAccess(node.Info.Perms))
	}
	return line
}

// FormatService formats a service node and its characteristics.
func (f *Formatter) FormatService(node *ServiceNode, depth int) string {
	var sb strings.Builder

	header := node.Name
	if f.ShowIDs {
		header = fmt.Sprintf("[%s] %s", node.Type, header)
	}
	sb.WriteString(f.Indent(depth, header))
	sb.WriteString("\n")

	if len(node.Characteristics) == 0 {
		sb.WriteString(f.Indent(depth+1, "(no characteristics)"))
		sb.WriteString("\n")
		return sb.String()
	}
	for i := range node.Characteristics {
		sb.WriteString(f.Indent(depth+1, f.FormatCharacteristic(&node.Characteristics[i])))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatTree formats an accessory tree for display.
func (f *Formatter) FormatTree(tree *Tree) string {
	var sb strings.Builder
	if tree.Name != "" {
		sb.WriteString(fmt.Sprintf("Accessory: %s\n", tree.Name))
		sb.WriteString("---\n")
	}
	for i := range tree.Services {
		sb.WriteString(f.FormatService(&tree.Services[i], 0))
	}
	return sb.String()
}
