package expando

// testDomain is a throwaway (domain, uid) table used only by this
// package's own tests, exercising the same contract maildomain
// exercises for real callers.

const testDomain = 99

const (
	testUIDN = iota
	testUIDX
	testUIDA
	testUIDB
	testUIDS
	testUIDDate
)

func testDefinitions() *DefinitionTable {
	return &DefinitionTable{
		Domain: testDomain,
		Entries: []DefinitionEntry{
			{Domain: testDomain, UID: testUIDN, ShortName: "n", IsString: true},
			{Domain: testDomain, UID: testUIDX, ShortName: "x", IsNumber: true},
			{Domain: testDomain, UID: testUIDA, ShortName: "a", IsNumber: true},
			{Domain: testDomain, UID: testUIDB, ShortName: "b", IsNumber: true},
			{Domain: testDomain, UID: testUIDS, ShortName: "s", IsString: true},
			{Domain: testDomain, UID: testUIDDate, ShortName: "[", IsString: true},
		},
	}
}

// testRenderData builds a RenderData whose string/number getters return
// fixed values keyed by uid, for driving a single render.
func testRenderData(strings map[int]string, numbers map[int]int64) *RenderData {
	getters := map[int]Getter{}
	for uid, v := range strings {
		v := v
		getters[uid] = Getter{String: func(n *Node, obj any, flags int, out *buffer) {
			out.AppendString(v)
		}}
	}
	for uid, v := range numbers {
		v := v
		getters[uid] = Getter{Number: func(n *Node, obj any, flags int) int64 {
			return v
		}}
	}
	return &RenderData{
		Entries: []RenderDataEntry{
			{Domain: testDomain, Table: &CallbackTable{Domain: testDomain, Getters: getters}},
		},
	}
}
