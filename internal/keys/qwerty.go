package keys

// qwertyRow lays the computer keyboard out like piano fingering: naturals on
// the home row, sharps on the row above.
var qwertyRow = []string{"A", "W", "S", "E", "D", "F", "T", "G", "Y", "H", "U", "J", "K", "O", "L", "P", ";", "'"}

// QwertyBindings maps computer key names to key indices, starting at first.
// Keys that fall outside the layout are left unbound.
func QwertyBindings(first Key, l Layout) map[string]int {
	bindings := make(map[string]int, len(qwertyRow))
	for i, name := range qwertyRow {
		key := first + Key(i)
		if !l.Contains(key) {
			break
		}
		bindings[name] = key.Index()
	}
	return bindings
}
