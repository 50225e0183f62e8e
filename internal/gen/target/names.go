package target

import "strings"

// Names every target keeps for itself inside the dynamic block
const (
	instanceName = "solution"
	resultName   = "result"
)

func wordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	set[instanceName] = true
	set[resultName] = true
	return set
}

var javaScriptReserved = wordSet(`
	break case catch class const continue debugger default delete do else enum
	export extends false finally for function if import in instanceof let new
	null return super switch this throw true try typeof var void while with yield
	await static implements interface package private protected public arguments
	eval undefined NaN Infinity JSON console require process module`)

var pythonReserved = wordSet(`
	False None True and as assert async await break class continue def del elif
	else except finally for from global if import in is lambda nonlocal not or
	pass raise return try while with yield json sys print Solution`)

var javaReserved = wordSet(`
	abstract assert boolean break byte case catch char class const continue
	default do double else enum extends final finally float for goto if
	implements import instanceof int interface long native new package private
	protected public return short static strictfp super switch synchronized this
	throw throws transient try void volatile while true false null var record
	yield args System String StringBuilder Solution Main`)

var cppReserved = wordSet(`
	alignas alignof and and_eq asm auto bitand bitor bool break case catch char
	char8_t char16_t char32_t class compl concept const consteval constexpr
	constinit const_cast continue co_await co_return co_yield decltype default
	delete do double dynamic_cast else enum explicit export extern false float
	for friend goto if inline int long mutable namespace new noexcept not not_eq
	nullptr operator or or_eq private protected public register reinterpret_cast
	requires return short signed sizeof static static_assert static_cast struct
	switch template this thread_local throw true try typedef typeid typename
	union unsigned using virtual void volatile wchar_t while xor xor_eq
	std main Solution`)

var goReserved = wordSet(`
	break case chan const continue default defer else fallthrough for func go
	goto if import interface map package range return select struct switch type
	var bool byte int int64 string rune error any interface nil true false
	append len cap make new panic recover print println copy delete
	fmt os strings strconv json bytes main`)
