package quiz

// Built-in subject banks. Keys are lower-case subject names.
var banks = map[string][]Question{
	"react": {
		{Prompt: "What is React?", Options: []string{"Library", "Framework", "Language", "Tool"}, Answer: "Library"},
		{Prompt: "What is JSX?", Options: []string{"JavaScript XML", "JavaScript", "Java", "XML"}, Answer: "JavaScript XML"},
		{Prompt: "What is a component?", Options: []string{"Function", "Class", "Module", "All of the above"}, Answer: "All of the above"},
		{Prompt: "What is state?", Options: []string{"Data", "Function", "Class", "None of the above"}, Answer: "Data"},
		{Prompt: "What is a prop?", Options: []string{"Property", "Function", "Class", "None of the above"}, Answer: "Property"},
		{Prompt: "What is useState?", Options: []string{"Hook", "Function", "Class", "None of the above"}, Answer: "Hook"},
		{Prompt: "What is useEffect?", Options: []string{"Hook", "Function", "Class", "None of the above"}, Answer: "Hook"},
		{Prompt: "What is a hook?", Options: []string{"Function", "Class", "Module", "None of the above"}, Answer: "Function"},
		{Prompt: "What is a context?", Options: []string{"Function", "Class", "Module", "None of the above"}, Answer: "Function"},
		{Prompt: "What is a ref?", Options: []string{"Reference", "Function", "Class", "None of the above"}, Answer: "Reference"},
	},
	"c++": {
		{Prompt: "What is C++?", Options: []string{"Language", "Library", "Framework", "Tool"}, Answer: "Language"},
		{Prompt: "What is a class?", Options: []string{"Blueprint", "Function", "Module", "None of the above"}, Answer: "Blueprint"},
		{Prompt: "What is an object?", Options: []string{"Instance", "Function", "Class", "None of the above"}, Answer: "Instance"},
		{Prompt: "What is inheritance?", Options: []string{"Feature", "Function", "Class", "None of the above"}, Answer: "Feature"},
		{Prompt: "What is polymorphism?", Options: []string{"Feature", "Function", "Class", "None of the above"}, Answer: "Feature"},
		{Prompt: "What is encapsulation?", Options: []string{"Feature", "Function", "Class", "None of the above"}, Answer: "Feature"},
		{Prompt: "What is abstraction?", Options: []string{"Feature", "Function", "Class", "None of the above"}, Answer: "Feature"},
		{Prompt: "What is a constructor?", Options: []string{"Function", "Class", "Module", "None of the above"}, Answer: "Function"},
		{Prompt: "What is a destructor?", Options: []string{"Function", "Class", "Module", "None of the above"}, Answer: "Function"},
		{Prompt: "What is a pointer?", Options: []string{"Variable", "Function", "Class", "None of the above"}, Answer: "Variable"},
	},
}

// bankOrder fixes the display order of built-in subjects.
var bankOrder = []string{"react", "c++"}
