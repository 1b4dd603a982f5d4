// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"context"
	"fmt"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// syntheticTemplates are the demo papers. %[1]s is replaced by the topic and
// %[2]d by the paper number.
var syntheticTemplates = []struct {
	title    string
	abstract string
}{
	{
		title: "The Role of AI in Addressing: %[1]s (Demo Paper %[2]d)",
		abstract: "This paper explores the theoretical frameworks and practical applications " +
			"of modern AI systems in solving complex real-world challenges, with a focus " +
			"on the critical research area of %[1]s. It discusses ethical concerns " +
			"and future directions for large language models in this domain.",
	},
	{
		title: "A Comprehensive Review of Algorithms for: %[1]s (Demo Paper %[2]d)",
		abstract: "We provide a comprehensive review of existing machine learning algorithms " +
			"related to %[1]s. The analysis confirms that a federated, privacy-preserving " +
			"approach is most effective for decentralized data sets. This work serves as " +
			"a baseline for future research in this field.",
	},
	{
		title: "Benchmarking Evaluation Protocols in %[1]s (Demo Paper %[2]d)",
		abstract: "Reported results in %[1]s are difficult to compare because evaluation " +
			"protocols differ between studies. We assemble a shared benchmark, re-run " +
			"twelve published baselines, and show that ranking changes in a third of cases.",
	},
	{
		title: "Data Scarcity and Transfer Learning for %[1]s (Demo Paper %[2]d)",
		abstract: "Labelled data for %[1]s remains scarce. We study transfer learning from " +
			"adjacent domains and find that pretraining on related corpora reduces the " +
			"required annotation budget by roughly half at equal accuracy.",
	},
	{
		title: "Open Problems and a Research Agenda for %[1]s (Demo Paper %[2]d)",
		abstract: "This position paper surveys open problems in %[1]s, including " +
			"reproducibility, interpretability, and deployment constraints, and proposes " +
			"a research agenda organised around measurable milestones.",
	},
}

// Synthetic returns deterministic demo records that embed the topic in every
// title and abstract. It needs no network and never fails.
type Synthetic struct{}

// Name returns the backend identifier.
func (Synthetic) Name() string { return string(types.SourceSynthetic) }

// Search returns min(limit, 5) records for topic.
func (Synthetic) Search(_ context.Context, topic string, limit int) ([]types.PaperRecord, error) {
	n := min(limit, len(syntheticTemplates))
	records := make([]types.PaperRecord, 0, max(n, 0))
	for i := 0; i < n; i++ {
		tmpl := syntheticTemplates[i]
		records = append(records, types.PaperRecord{
			Title:    fmt.Sprintf(tmpl.title, topic, i+1),
			Abstract: fmt.Sprintf(tmpl.abstract, topic, i+1),
			URL:      fmt.Sprintf("https://www.example.com/demo-paper-%d", i+1),
		})
	}
	return records, nil
}
