// Package tenantdex embeds the tenantdex TF-IDF retrieval engine in a Go program.
//
// Documents belong to a tenant; queries only ever rank documents of the
// tenant they name. The index lives in memory and is rebuilt on every
// mutation, so the client suits corpora of up to a few thousand documents.
//
//	client, _ := tenantdex.New(tenantdex.WithMaxFeatures(5000))
//	_ = client.Load(ctx, []tenantdex.Document{
//	    {ID: "billing.md", Title: "Billing", Text: "Refunds are issued ...", Tenant: "demo"},
//	})
//	results, _ := client.Query(ctx, "How do refunds work?", "demo", 3)
//	fmt.Println(tenantdex.Answer(results))
package tenantdex
