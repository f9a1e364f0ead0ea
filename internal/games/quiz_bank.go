package games

type Question struct {
	ID          int      `json:"id"`
	Code        string   `json:"code"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Answer      string   `json:"-"`
	Explanation string   `json:"-"`
}

// QuestionBank holds the quiz questions keyed by difficulty.
type QuestionBank map[string][]Question

// DefaultQuestionBank returns the built-in JavaScript puzzles.
func DefaultQuestionBank() QuestionBank {
	return QuestionBank{
		"beginner": {
			{ID: 1, Code: "console.log(typeof null);", Prompt: "What will this output?",
				Options: []string{"object", "null", "undefined", "string"}, Answer: "object",
				Explanation: "typeof null returns 'object', a historical quirk kept for backward compatibility."},
			{ID: 2, Code: "console.log(2 + '2');", Prompt: "What's the result?",
				Options: []string{"4", "22", "NaN", "TypeError"}, Answer: "22",
				Explanation: "The number is coerced to a string and concatenated with '2'."},
			{ID: 3, Code: "console.log([] + []);", Prompt: "What does this evaluate to?",
				Options: []string{"[]", "[[]]", "''", "undefined"}, Answer: "''",
				Explanation: "Both arrays become empty strings under +, so the result is an empty string."},
			{ID: 4, Code: "console.log(0.1 + 0.2 === 0.3);", Prompt: "What's the output?",
				Options: []string{"true", "false", "NaN", "TypeError"}, Answer: "false",
				Explanation: "Floating point gives 0.30000000000000004, not exactly 0.3."},
			{ID: 5, Code: "console.log(!!false);", Prompt: "What will this log?",
				Options: []string{"true", "false", "undefined", "0"}, Answer: "false",
				Explanation: "Double negation converts to boolean; !false is true and !true is false."},
			{ID: 16, Code: "console.log(typeof NaN);", Prompt: "What will this output?",
				Options: []string{"NaN", "number", "undefined", "object"}, Answer: "number",
				Explanation: "NaN is a special value of the number type."},
			{ID: 17, Code: "console.log('5' - 2);", Prompt: "What's the result?",
				Options: []string{"3", "52", "NaN", "'3'"}, Answer: "3",
				Explanation: "The minus operator only works on numbers, so '5' is converted to 5."},
			{ID: 18, Code: "console.log([1, 2, 3].length);", Prompt: "What's the length?",
				Options: []string{"2", "3", "4", "undefined"}, Answer: "3",
				Explanation: "The array holds three elements."},
			{ID: 19, Code: "console.log(null == undefined);", Prompt: "What's the output?",
				Options: []string{"true", "false", "TypeError", "null"}, Answer: "true",
				Explanation: "Loose equality treats null and undefined as equal to each other."},
			{ID: 20, Code: "let x;\nconsole.log(x);", Prompt: "What will this log?",
				Options: []string{"null", "0", "undefined", "ReferenceError"}, Answer: "undefined",
				Explanation: "A declared but unassigned variable holds undefined."},
			{ID: 21, Code: "console.log('abc'.toUpperCase());", Prompt: "What's the result?",
				Options: []string{"abc", "ABC", "Abc", "TypeError"}, Answer: "ABC",
				Explanation: "toUpperCase returns a new upper-cased string."},
			{ID: 22, Code: "console.log(Boolean(''));", Prompt: "What will this output?",
				Options: []string{"true", "false", "''", "undefined"}, Answer: "false",
				Explanation: "The empty string is falsy."},
		},
		"intermediate": {
			{ID: 6, Code: "function test() {\n  console.log(this);\n}\ntest();", Prompt: "In non-strict mode, what does 'this' refer to?",
				Options: []string{"undefined", "window/global object", "test function", "null"}, Answer: "window/global object",
				Explanation: "A plain function call in non-strict mode binds this to the global object."},
			{ID: 7, Code: "const arr = [1, 2, 3];\narr[10] = 99;\nconsole.log(arr.length);", Prompt: "What's the array length?",
				Options: []string{"4", "10", "11", "3"}, Answer: "11",
				Explanation: "Writing index 10 grows the length to 11 and leaves holes at 3 to 9."},
			{ID: 8, Code: "console.log(\n  (function(){ return typeof arguments; })()\n);", Prompt: "What's the output?",
				Options: []string{"object", "array", "function", "undefined"}, Answer: "object",
				Explanation: "arguments is an array-like object."},
			{ID: 9, Code: "let a = { x: 1 };\nlet b = a;\nb.x = 2;\nconsole.log(a.x);", Prompt: "What's the value of a.x?",
				Options: []string{"1", "2", "undefined", "ReferenceError"}, Answer: "2",
				Explanation: "a and b reference the same object."},
			{ID: 10, Code: "console.log([1, 2, 3].map(parseInt));", Prompt: "What's the result?",
				Options: []string{"[1, 2, 3]", "[1, NaN, NaN]", "[1, 0, 1]", "[NaN, NaN, NaN]"}, Answer: "[1, NaN, NaN]",
				Explanation: "map passes the index as parseInt's radix, and radix 1 and 2 are invalid for '2' and '3'."},
			{ID: 23, Code: "for (var i = 0; i < 3; i++) {\n  setTimeout(() => console.log(i));\n}", Prompt: "What gets logged?",
				Options: []string{"0 1 2", "3 3 3", "0 0 0", "undefined x3"}, Answer: "3 3 3",
				Explanation: "var is function scoped, so every callback sees the final value of i."},
			{ID: 24, Code: "console.log([10, 1, 2].sort());", Prompt: "What's the result?",
				Options: []string{"[1, 2, 10]", "[10, 1, 2]", "[1, 10, 2]", "[2, 1, 10]"}, Answer: "[1, 10, 2]",
				Explanation: "The default sort compares elements as strings."},
			{ID: 25, Code: "console.log(typeof function(){});", Prompt: "What will this output?",
				Options: []string{"object", "function", "undefined", "callable"}, Answer: "function",
				Explanation: "typeof has a dedicated result for callable objects."},
			{ID: 26, Code: "const { a = 5 } = { a: undefined };\nconsole.log(a);", Prompt: "What's the value of a?",
				Options: []string{"undefined", "5", "null", "TypeError"}, Answer: "5",
				Explanation: "Destructuring defaults apply when the value is undefined."},
			{ID: 27, Code: "console.log(1 < 2 < 3, 3 > 2 > 1);", Prompt: "What's the output?",
				Options: []string{"true true", "true false", "false true", "false false"}, Answer: "true false",
				Explanation: "3 > 2 is true, and true > 1 compares 1 > 1, which is false."},
			{ID: 28, Code: "console.log(Array.isArray(Array.prototype));", Prompt: "What's the result?",
				Options: []string{"true", "false", "TypeError", "undefined"}, Answer: "true",
				Explanation: "Array.prototype is itself an array."},
		},
		"expert": {
			{ID: 11, Code: "console.log(\n  (![]+[])[+[]]+(![]+[])[+!+[]]+([![]]+[][[]])[+!+[]+[+[]]]+(![]+[])[!+[]+!+[]]\n);", Prompt: "What does this cryptic code output?",
				Options: []string{"fail", "true", "false", "undefined"}, Answer: "fail",
				Explanation: "Coercion tricks pick letters out of 'false' and 'undefined' to spell 'fail'."},
			{ID: 12, Code: "const obj = {\n  a: function() { return this; },\n  b: () => this,\n  c() { return this; }\n};\nconsole.log(obj.a() === obj.b());", Prompt: "What's the result?",
				Options: []string{"true", "false", "TypeError", "ReferenceError"}, Answer: "false",
				Explanation: "obj.a() returns obj, while the arrow function keeps the outer this."},
			{ID: 13, Code: "function* gen() {\n  yield 1;\n  yield 2;\n  return 3;\n}\nconst g = gen();\nconsole.log([...g]);", Prompt: "What's in the array?",
				Options: []string{"[1, 2, 3]", "[1, 2]", "[3]", "[]"}, Answer: "[1, 2]",
				Explanation: "Spread only collects yielded values, not the return value."},
			{ID: 14, Code: "console.log(\n  new Date(2023, 1, 29).getMonth()\n);", Prompt: "What month number is returned?",
				Options: []string{"1", "2", "3", "0"}, Answer: "2",
				Explanation: "Feb 29 2023 rolls over to March 1, and March is month 2."},
			{ID: 15, Code: "const promise = new Promise(resolve => {\n  console.log(1);\n  resolve();\n  console.log(2);\n});\nconsole.log(3);", Prompt: "What's the output order?",
				Options: []string{"1, 2, 3", "3, 1, 2", "1, 3, 2", "3, 2, 1"}, Answer: "1, 2, 3",
				Explanation: "The executor runs synchronously and keeps going after resolve."},
			{ID: 29, Code: "console.log('start');\nsetTimeout(() => console.log('timeout'));\nPromise.resolve().then(() => console.log('micro'));\nconsole.log('end');", Prompt: "What's the output order?",
				Options: []string{"start end micro timeout", "start micro end timeout", "start end timeout micro", "start timeout micro end"}, Answer: "start end micro timeout",
				Explanation: "Microtasks drain before the next macrotask."},
			{ID: 30, Code: "console.log(0.1 * 3 === 0.3, Object.is(-0, 0));", Prompt: "What's the output?",
				Options: []string{"true true", "false false", "false true", "true false"}, Answer: "false false",
				Explanation: "0.1 * 3 is 0.30000000000000004, and Object.is tells -0 apart from 0."},
			{ID: 31, Code: "const s = new Set([1, '1', 1.0]);\nconsole.log(s.size);", Prompt: "What's the size?",
				Options: []string{"1", "2", "3", "0"}, Answer: "2",
				Explanation: "1 and 1.0 are the same number; '1' is a string."},
			{ID: 32, Code: "console.log([...'hello'].reverse().join('') === 'olleh');", Prompt: "What's the result?",
				Options: []string{"true", "false", "TypeError", "undefined"}, Answer: "true",
				Explanation: "Spreading a string yields its characters."},
			{ID: 33, Code: "class A { static #n = 1; static get() { return A.#n; } }\nconsole.log(A.get());", Prompt: "What's logged?",
				Options: []string{"1", "undefined", "SyntaxError", "TypeError"}, Answer: "1",
				Explanation: "Static private fields are readable from static methods of the class."},
			{ID: 34, Code: "console.log(typeof typeof 1);", Prompt: "What will this output?",
				Options: []string{"number", "string", "undefined", "object"}, Answer: "string",
				Explanation: "typeof always returns a string."},
		},
	}
}
