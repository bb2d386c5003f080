package expression

// ToPostfix reorders infix tokens into RPN. Both precedence tiers are
// left-associative. There are no grouping tokens.
func ToPostfix(tokens []Token) []Token {
	output := make([]Token, 0, len(tokens))
	var ops []Token

	for _, tok := range tokens {
		if tok.Kind == TokenNumber {
			output = append(output, tok)
			continue
		}

		for len(ops) > 0 && ops[len(ops)-1].Op.Precedence() >= tok.Op.Precedence() {
			output = append(output, ops[len(ops)-1])
			ops = ops[:len(ops)-1]
		}
		ops = append(ops, tok)
	}

	for len(ops) > 0 {
		output = append(output, ops[len(ops)-1])
		ops = ops[:len(ops)-1]
	}

	return output
}
