package gateway

import "encoding/json"

// Link is a HAL link object.
type Link struct {
	Href string `json:"href"`
}

// Links maps relation names to links.
type Links map[string]Link

// Collection is the HAL rendering of a list.
type Collection struct {
	Embedded map[string][]json.RawMessage `json:"_embedded"`
	Links    Links                        `json:"_links"`
}

// EntityLinks returns the self and all links of one entity.
func EntityLinks(res Resource, id string) Links {
	return Links{
		"self": {Href: res.Public + "/" + id},
		"all":  {Href: res.Public},
	}
}

// Entity renders v with a _links member added to its JSON object.
func Entity(res Resource, v Keyed) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	links, err := json.Marshal(EntityLinks(res, v.Key()))
	if err != nil {
		return nil, err
	}
	fields["_links"] = links
	return json.Marshal(fields)
}

// Collect renders items as a HAL collection under res.Rel.
func Collect[T Keyed](res Resource, items []T) (*Collection, error) {
	list := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		e, err := Entity(res, it)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return &Collection{
		Embedded: map[string][]json.RawMessage{res.Rel: list},
		Links:    Links{"self": {Href: res.Public}},
	}, nil
}
