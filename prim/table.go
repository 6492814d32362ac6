package prim

// Info is the metadata record of one primitive
type Info struct {
	Name         string
	Glyph        rune // 0 when the primitive has no glyph
	Sig          Signature
	Deprecated   bool
	Experimental bool
}

// Table is an immutable Provider backed by a fixed slice indexed by Primitive
type Table struct {
	infos []Info
	order []Primitive
}

// NewTable builds a provider from explicit records
// Primitives missing from infos report an empty name and no glyph
func NewTable(infos map[Primitive]Info) *Table {
	t := &Table{infos: make([]Info, primitiveCount)}
	for p := Invalid + 1; p < primitiveCount; p++ {
		info, ok := infos[p]
		if !ok {
			continue
		}
		t.infos[p] = info
		t.order = append(t.order, p)
	}
	return t
}

// Builtin returns the table of every primitive known to the keypad
func Builtin() *Table {
	f, m := Function, Modifier
	return NewTable(map[Primitive]Info{
		Identity: {Name: "identity", Glyph: '∘', Sig: f(1)},
		Slf:      {Name: "self", Glyph: '˙', Sig: m(1)},
		Backward: {Name: "backward", Glyph: '˜', Sig: m(1)},
		Pop:      {Name: "pop", Glyph: '◌', Sig: f(1)},
		Dup:      {Name: "duplicate", Glyph: '.', Sig: f(1)},
		Flip:     {Name: "flip", Glyph: ':', Sig: f(2)},
		Stack:    {Name: "stack", Glyph: '?', Sig: f(0)},

		Fork:    {Name: "fork", Glyph: '⊃', Sig: m(2)},
		Both:    {Name: "both", Glyph: '∩', Sig: m(1)},
		Bracket: {Name: "bracket", Glyph: '⊓', Sig: m(2)},
		Dip:     {Name: "dip", Glyph: '⊙', Sig: m(1)},
		Gap:     {Name: "gap", Glyph: '⋅', Sig: m(1)},
		On:      {Name: "on", Glyph: '⟜', Sig: m(1)},
		By:      {Name: "by", Glyph: '⊸', Sig: m(1)},
		Off:     {Name: "off", Glyph: '⤚', Sig: m(1)},
		With:    {Name: "with", Glyph: '⤙', Sig: m(1)},
		Below:   {Name: "below", Glyph: '◡', Sig: m(1)},

		Un:      {Name: "un", Glyph: '°', Sig: m(1)},
		Anti:    {Name: "anti", Glyph: '⌝', Sig: m(1)},
		Under:   {Name: "under", Glyph: '⍜', Sig: m(2)},
		Obverse: {Name: "obverse", Glyph: '⌅', Sig: m(1)},
		Fill:    {Name: "fill", Glyph: '⬚', Sig: m(2)},

		Reduce: {Name: "reduce", Glyph: '/', Sig: m(1)},
		Fold:   {Name: "fold", Glyph: '∧', Sig: m(1)},
		Scan:   {Name: "scan", Glyph: '\\', Sig: m(1)},
		Repeat: {Name: "repeat", Glyph: '⍥', Sig: m(1)},
		Switch: {Name: "switch", Glyph: '⨬', Sig: m(1)},
		Do:     {Name: "do", Glyph: '⍢', Sig: m(2)},
		Try:    {Name: "try", Glyph: '⍣', Sig: m(2)},
		Case:   {Name: "case", Glyph: '⍩', Sig: m(1)},
		Assert: {Name: "assert", Glyph: '⍤', Sig: f(2)},

		Rows:      {Name: "rows", Glyph: '≡', Sig: m(1)},
		TableMod:  {Name: "table", Glyph: '⊞', Sig: m(1)},
		Stencil:   {Name: "stencil", Glyph: '⧈', Sig: m(1)},
		Tuples:    {Name: "tuples", Glyph: '⧅', Sig: m(1)},
		Partition: {Name: "partition", Glyph: '⊜', Sig: m(1)},
		Group:     {Name: "group", Glyph: '⊕', Sig: m(1)},

		Neg:   {Name: "negate", Glyph: '¯', Sig: f(1)},
		Sign:  {Name: "sign", Glyph: '±', Sig: f(1)},
		Not:   {Name: "not", Glyph: '¬', Sig: f(1)},
		Abs:   {Name: "absolute value", Glyph: '⌵', Sig: f(1)},
		Sqrt:  {Name: "sqrt", Glyph: '√', Sig: f(1)},
		Sin:   {Name: "sine", Glyph: '∿', Sig: f(1)},
		Floor: {Name: "floor", Glyph: '⌊', Sig: f(1)},
		Ceil:  {Name: "ceiling", Glyph: '⌈', Sig: f(1)},
		Round: {Name: "round", Glyph: '⁅', Sig: f(1)},

		Len:       {Name: "length", Glyph: '⧻', Sig: f(1)},
		Shape:     {Name: "shape", Glyph: '△', Sig: f(1)},
		First:     {Name: "first", Glyph: '⊢', Sig: f(1)},
		Last:      {Name: "last", Glyph: '⊣', Sig: f(1)},
		Reverse:   {Name: "reverse", Glyph: '⇌', Sig: f(1)},
		Deshape:   {Name: "deshape", Glyph: '♭', Sig: f(1)},
		Fix:       {Name: "fix", Glyph: '¤', Sig: f(1)},
		Transpose: {Name: "transpose", Glyph: '⍉', Sig: f(1)},

		Range: {Name: "range", Glyph: '⇡', Sig: f(1)},
		Bits:  {Name: "bits", Glyph: '⋯', Sig: f(1)},
		Where: {Name: "where", Glyph: '⊚', Sig: f(1)},
		Parse: {Name: "parse", Glyph: '⋕', Sig: f(1)},

		Sort:        {Name: "sort", Glyph: '⍆', Sig: f(1)},
		Rise:        {Name: "rise", Glyph: '⍏', Sig: f(1)},
		Fall:        {Name: "fall", Glyph: '⍖', Sig: f(1)},
		Classify:    {Name: "classify", Glyph: '⊛', Sig: f(1)},
		Deduplicate: {Name: "deduplicate", Glyph: '◴', Sig: f(1)},
		Unique:      {Name: "unique", Glyph: '◰', Sig: f(1)},

		Box:       {Name: "box", Glyph: '□', Sig: f(1)},
		Content:   {Name: "content", Glyph: '◇', Sig: m(1)},
		Inventory: {Name: "inventory", Glyph: '⍚', Sig: m(1)},

		Add:     {Name: "add", Glyph: '+', Sig: f(2)},
		Sub:     {Name: "subtract", Glyph: '-', Sig: f(2)},
		Mul:     {Name: "multiply", Glyph: '×', Sig: f(2)},
		Div:     {Name: "divide", Glyph: '÷', Sig: f(2)},
		Modulus: {Name: "modulus", Glyph: '◿', Sig: f(2)},
		Pow:     {Name: "power", Glyph: 'ⁿ', Sig: f(2)},
		Log:     {Name: "logarithm", Glyph: 'ₙ', Sig: f(2)},
		Atan:    {Name: "atangent", Glyph: '∠', Sig: f(2)},
		Complex: {Name: "complex", Glyph: 'ℂ', Sig: f(2)},
		Base:    {Name: "base", Glyph: '⊥', Sig: f(2)},

		Couple:  {Name: "couple", Glyph: '⊟', Sig: f(2)},
		Join:    {Name: "join", Glyph: '⊂', Sig: f(2)},
		Select:  {Name: "select", Glyph: '⊏', Sig: f(2)},
		Pick:    {Name: "pick", Glyph: '⊡', Sig: f(2)},
		Reshape: {Name: "reshape", Glyph: '↯', Sig: f(2)},
		Drop:    {Name: "drop", Glyph: '↘', Sig: f(2)},
		Take:    {Name: "take", Glyph: '↙', Sig: f(2)},
		Rotate:  {Name: "rotate", Glyph: '↻', Sig: f(2)},
		Keep:    {Name: "keep", Glyph: '▽', Sig: f(2)},
		Orient:  {Name: "orient", Glyph: '⤸', Sig: f(2)},

		Eq:  {Name: "equals", Glyph: '=', Sig: f(2)},
		Ne:  {Name: "not equals", Glyph: '≠', Sig: f(2)},
		Le:  {Name: "less or equal", Glyph: '≤', Sig: f(2)},
		Lt:  {Name: "less than", Glyph: '<', Sig: f(2)},
		Gt:  {Name: "greater than", Glyph: '>', Sig: f(2)},
		Ge:  {Name: "greater or equal", Glyph: '≥', Sig: f(2)},
		Min: {Name: "minimum", Glyph: '↧', Sig: f(2)},
		Max: {Name: "maximum", Glyph: '↥', Sig: f(2)},

		Match:    {Name: "match", Glyph: '≍', Sig: f(2)},
		Find:     {Name: "find", Glyph: '⌕', Sig: f(2)},
		Mask:     {Name: "mask", Glyph: '⦷', Sig: f(2)},
		MemberOf: {Name: "memberof", Glyph: '∊', Sig: f(2)},
		IndexOf:  {Name: "indexof", Glyph: '⨂', Sig: f(2)},

		Rand:     {Name: "random", Glyph: '⚂', Sig: f(0)},
		Eta:      {Name: "eta", Glyph: 'η', Sig: f(0)},
		Pi:       {Name: "pi", Glyph: 'π', Sig: f(0)},
		Tau:      {Name: "tau", Glyph: 'τ', Sig: f(0)},
		Infinity: {Name: "infinity", Glyph: '∞', Sig: f(0)},

		Derivative:  {Name: "derivative", Glyph: '∂', Sig: m(1), Experimental: true},
		Integral:    {Name: "integral", Glyph: '∫', Sig: m(1), Experimental: true},
		Occurrences: {Name: "occurrences", Glyph: '⧆', Sig: f(1), Experimental: true},

		Rerank:  {Name: "rerank", Glyph: '☇', Sig: f(2), Deprecated: true},
		Windows: {Name: "windows", Glyph: '◫', Sig: f(2), Deprecated: true},
		Trace:   {Name: "trace", Glyph: '⸮', Sig: f(1), Deprecated: true},

		Print: {Name: "&p", Sig: f(1)},
		Now:   {Name: "now", Sig: f(0)},
	})
}

// All returns the known primitives in declaration order
func (t *Table) All() []Primitive {
	out := make([]Primitive, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Table) info(p Primitive) Info {
	if p <= Invalid || p >= primitiveCount {
		return Info{}
	}
	return t.infos[p]
}

// Name returns the primitive's name, empty if unknown
func (t *Table) Name(p Primitive) string {
	return t.info(p).Name
}

// Glyph returns the display glyph, false when the primitive has none
func (t *Table) Glyph(p Primitive) (rune, bool) {
	g := t.info(p).Glyph
	return g, g != 0
}

func (t *Table) Signature(p Primitive) Signature {
	return t.info(p).Sig
}

func (t *Table) Deprecated(p Primitive) bool {
	return t.info(p).Deprecated
}

func (t *Table) Experimental(p Primitive) bool {
	return t.info(p).Experimental
}

// Lookup finds the primitive drawn with glyph r
func (t *Table) Lookup(r rune) (Primitive, bool) {
	for _, p := range t.order {
		if t.infos[p].Glyph == r {
			return p, true
		}
	}
	return Invalid, false
}

// String returns the builtin name of the primitive
func (p Primitive) String() string {
	if name := builtinNames[p]; name != "" {
		return name
	}
	return "invalid"
}

var builtinNames = func() map[Primitive]string {
	names := make(map[Primitive]string, primitiveCount)
	b := Builtin()
	for _, p := range b.order {
		names[p] = b.infos[p].Name
	}
	return names
}()
