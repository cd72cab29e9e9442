package export

// StatementRow is a single payment ledger line in an exported statement.
type StatementRow struct {
	ClassName     string
	TransactionID string
	Amount        string
	Status        string
	PaidAt        string
}

// Statement is the payment history of a single account, newest first.
type Statement struct {
	Email string
	Rows  []StatementRow
}

var statementHeaders = []string{"Class", "Transaction", "Amount", "Status", "Date"}

func (s Statement) records() [][]string {
	records := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		records = append(records, []string{row.ClassName, row.TransactionID, row.Amount, row.Status, row.PaidAt})
	}
	return records
}
