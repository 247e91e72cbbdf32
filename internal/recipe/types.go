package recipe

// Document is a decoded recipe.
type Document struct {
	// Fields maps column names to kinds ("text", "text_list", "number",
	// "boolean", "attachment", "date").
	Fields map[string]string `yaml:"fields" toml:"fields"`

	// Formulas are compiled in order.
	Formulas []Entry `yaml:"formulas" toml:"formulas"`
}

// Entry is one named formula.
type Entry struct {
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description,omitempty" toml:"description"`
	Expr        Expr   `yaml:"expr" toml:"expr"`
}

// Expr is one node of an expression tree. Exactly one of the node keys
// (And, Or, Xor, Not, If, RecordID, Raw, Field) is set; Then and Else
// belong to If and the remaining keys belong to Field.
type Expr struct {
	And []Expr `yaml:"and,omitempty" toml:"and"`
	Or  []Expr `yaml:"or,omitempty" toml:"or"`
	Xor []Expr `yaml:"xor,omitempty" toml:"xor"`
	Not []Expr `yaml:"not,omitempty" toml:"not"`

	If   *Expr   `yaml:"if,omitempty" toml:"if"`
	Then *Branch `yaml:"then,omitempty" toml:"then"`
	Else *Branch `yaml:"else,omitempty" toml:"else"`

	RecordID *string `yaml:"record_id,omitempty" toml:"record_id"`
	Raw      *string `yaml:"raw,omitempty" toml:"raw"`

	Field         string   `yaml:"field,omitempty" toml:"field"`
	Op            string   `yaml:"op,omitempty" toml:"op"`
	Value         any      `yaml:"value,omitempty" toml:"value"`
	Values        []string `yaml:"values,omitempty" toml:"values"`
	CaseSensitive bool     `yaml:"case_sensitive,omitempty" toml:"case_sensitive"`
	NoTrim        bool     `yaml:"no_trim,omitempty" toml:"no_trim"`
	Unit          string   `yaml:"unit,omitempty" toml:"unit"`
}

// Branch is the then or else value of a conditional.
type Branch struct {
	Value  *string `yaml:"value,omitempty" toml:"value"`
	String bool    `yaml:"string,omitempty" toml:"string"`
	Expr   *Expr   `yaml:"expr,omitempty" toml:"expr"`
}

// Formula is a compiled entry.
type Formula struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Text        string `json:"formula"`
}
