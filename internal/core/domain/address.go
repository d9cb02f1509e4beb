package domain

type Address struct {
	ID   string
	Text string
}

// An AddressSelection is the address book plus the address chosen for the
// current order. Selected is empty when nothing is chosen.
type AddressSelection struct {
	All      []Address
	Selected string
}

func (s AddressSelection) Has(id string) bool {
	for _, a := range s.All {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Replace swaps the address book and drops the selection when the selected
// address is no longer in it.
func (s AddressSelection) Replace(all []Address) AddressSelection {
	s.All = all
	if s.Selected != "" && !s.Has(s.Selected) {
		s.Selected = ""
	}
	return s
}
