package escl

import (
	"strconv"

	"github.com/scanbridge/scanbridge/abstract"
	"github.com/scanbridge/scanbridge/internal/optional"
	"github.com/scanbridge/scanbridge/xmldoc"
)

// Range commonly used to specify the range of some parameter, like
// brightness, contrast etc.
type Range struct {
	Min    int               // Minimal supported value
	Max    int               // Maximal supported value
	Normal int               // Normal value
	Step   optional.Val[int] // Step between the subsequent values
}

// decodeRange decodes [Range] from the XML tree
func decodeRange(root xmldoc.Element) (r Range, err error) {
	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	// Lookup message elements
	min := xmldoc.Lookup{Name: NsScan + ":Min", Required: true}
	max := xmldoc.Lookup{Name: NsScan + ":Max", Required: true}
	normal := xmldoc.Lookup{Name: NsScan + ":Normal", Required: true}
	step := xmldoc.Lookup{Name: NsScan + ":Step"}

	missed := root.Lookup(&min, &max, &normal, &step)
	if missed != nil {
		err = xmldoc.XMLErrMissed(missed.Name)
		return
	}

	// Decode elements
	r.Min, err = decodeNonNegativeInt(min.Elem)
	if err == nil {
		r.Max, err = decodeNonNegativeInt(max.Elem)
	}
	if err == nil {
		r.Normal, err = decodeNonNegativeInt(normal.Elem)
	}
	if err == nil && step.Found {
		var tmp int
		tmp, err = decodeNonNegativeInt(step.Elem)
		r.Step = optional.New(tmp)
	}

	return
}

// ToXML generates XML tree for the [Range].
func (r Range) ToXML(name string) xmldoc.Element {
	elm := xmldoc.Element{
		Name: name,
		Children: []xmldoc.Element{
			{
				Name: NsScan + ":" + "Min",
				Text: strconv.Itoa(r.Min),
			},
			{
				Name: NsScan + ":" + "Max",
				Text: strconv.Itoa(r.Max),
			},
			{
				Name: NsScan + ":" + "Normal",
				Text: strconv.Itoa(r.Normal),
			},
		},
	}

	if step, ok := r.Step.Get(); ok {
		elm.Children = append(elm.Children, xmldoc.Element{
			Name: NsScan + ":" + "Step",
			Text: strconv.Itoa(step),
		})
	}

	return elm
}

// validate checks that v, if set, falls within the range. An unset v
// is always valid: the device substitutes its Normal default.
func (r Range) validate(field string, v optional.Val[int]) error {
	val, ok := v.Get()
	if !ok {
		return nil
	}
	if val < r.Min || val > r.Max {
		return &abstract.ParamError{Kind: abstract.ErrUnsupportedParam, Field: field, Value: val}
	}
	return nil
}
