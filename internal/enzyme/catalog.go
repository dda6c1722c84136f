package enzyme

// catalog is fixed at build time; never mutate it.
var catalog = []Enzyme{
	{"EcoRI", "GAATTC"}, {"BamHI", "GGATCC"}, {"HindIII", "AAGCTT"},
	{"TaqI", "TCGA"}, {"HaeIII", "GGCC"}, {"AluI", "AGCT"},
	{"AccI", "GTMKAC"}, {"AflII", "CTTAAG"}, {"ApaI", "GGGCCC"},
	{"BglII", "AGATCT"}, {"ClaI", "ATCGAT"}, {"DraI", "TTTAAA"},
	{"EcoRV", "GATATC"}, {"FokI", "GGATG"}, {"HhaI", "GCGC"},
	{"HincII", "GTYRAC"}, {"KpnI", "GGTACC"}, {"MboI", "GATC"},
	{"MspI", "CCGG"}, {"NcoI", "CCATGG"}, {"NdeI", "CATATG"},
	{"NotI", "GCGGCCGC"}, {"NsiI", "ATGCAT"}, {"PstI", "CTGCAG"},
	{"PvuII", "CAGCTG"}, {"SacI", "GAGCTC"}, {"SalI", "GTCGAC"},
	{"ScaI", "AGTACT"}, {"SmaI", "CCCGGG"}, {"SpeI", "ACTAGT"},
	{"SphI", "GCATGC"}, {"SspI", "AATATT"}, {"StuI", "AGGCCT"},
	{"Tth111I", "GACNNNGTC"}, {"XbaI", "TCTAGA"}, {"XhoI", "CTCGAG"},
	{"XmaI", "CCCGGG"}, {"BsaI", "GGTCTC"}, {"BsmBI", "CGTCTC"},
	{"BsrGI", "TGTACA"}, {"BstEII", "GGTNACC"}, {"EagI", "CGGCCG"},
	{"AatII", "GACGTC"}, {"BbvCI", "CCTCAGC"}, {"BsiWI", "CGTACG"},
	{"BspEI", "TCCGGA"}, {"BsrI", "ACTGG"}, {"BstAPI", "GCANNNNNTGC"},
	{"BstBI", "TTCGAA"}, {"BstXI", "CCANNNNNNTGG"}, {"DpnI", "GATC"},
	{"FseI", "GGCCGGCC"}, {"HindII", "GTYRAC"}, {"MfeI", "CAATTG"},
	{"NheI", "GCTAGC"}, {"PacI", "TTAATTAA"}, {"SfiI", "GGCCNNNNNGGCC"},
	{"SnaBI", "TACGTA"}, {"XmnI", "GAANNNNTTC"}, {"ZraI", "GACGTC"},
}
