package openrouter

import (
	"context"

	"github.com/duosplit/receipt-split-service/internal/domain"
)

// Fake is a drop-in extractor that returns a canned groceries receipt
// without calling any API. Enable it with FAKE_EXTRACTOR=true to work
// on the split flow offline.
type Fake struct{}

// NewFake creates a fake extractor.
func NewFake() *Fake {
	return &Fake{}
}

// ExtractFromImageURL returns the canned receipt.
func (f *Fake) ExtractFromImageURL(ctx context.Context, url string) (domain.Receipt, error) {
	return fakeReceipt(), nil
}

// ExtractFromImageData returns the canned receipt.
func (f *Fake) ExtractFromImageData(ctx context.Context, pngData []byte) (domain.Receipt, error) {
	return fakeReceipt(), nil
}

func fakeReceipt() domain.Receipt {
	return domain.Receipt{
		Total: "79.12",
		Items: []domain.ReceiptItem{
			{Label: "SAN PELLEGRINO LIMONATA 6x33CL", Price: "3.75"},
			{Label: "PUR JUS CLEMENTINE U PET 1L", Price: "2.41"},
			{Label: "SPEC.MUESLI FRUIT. JORDONS 750G", Price: "4.16"},
			{Label: "MAYO FINE QUAL. TRUIT. KATL. 2376", Price: "3.01"},
			{Label: "MAIS S/SURE AJOUTE U X3 2.50", Price: "2.55"},
			{Label: "FLAGEOLETS EXTRA-FINS U 14 7 74", Price: "2.42"},
			{Label: "PIN'S FONDANT ORANGE LU 1500", Price: "1.75"},
			{Label: "FIGOLU 192G", Price: "1.59"},
			{Label: "ST. NORET NATURE 17.6G 300G", Price: "4.07"},
			{Label: "PLAIS. ALPES FRI'S JAIN 6X125G", Price: "3.66"},
			{Label: "DEUF PL.AR TOP LA.ROGE LOUE X6", Price: "3.01"},
			{Label: "MARONSUI'S LA LAITIERE 4X690", Price: "2.13"},
			{Label: "DANETTE CHOCOLAT 4X125G", Price: "1.74"},
			{Label: "LAIT ECREME UHT BBC U 1L", Price: "1.32"},
			{Label: "CITRON VERNA 0.198 KG X 5.39 €/kg", Price: "1.19"},
			{Label: "POMME DE TERRE AGATA 0.680 KG x 3.69 €/kg", Price: "2.51"},
			{Label: "BANANE CAVENDISH FRANCE 0.772 KG x 2.30 €/kg", Price: "1.78"},
			{Label: "PAVE SAUMON OSEILLE RIZ U 270G", Price: "9.96"},
			{Label: "BOB LISTERINE DENTIGENCE 500ML", Price: "6.13"},
			{Label: "DEO STICK PROTECTOR SANEX 65ML", Price: "3.37"},
			{Label: "HACHIS PARN.EMEN.GRAI. FM 300G", Price: "4.17"},
			{Label: "ESCALOP MILAN. SPAGH. FL. M 300G", Price: "4.00"},
			{Label: "DESODORISANT CHAUSSUR. U 100ML", Price: "2.66"},
			{Label: "RCH.NET.TRIP.ACT. AJAX 750ML", Price: "2.06"},
			{Label: "COLLE PATTEX CONTACT GEL 50G", Price: "3.70"},
		},
	}
}
